package http

import (
	"encoding/json"
	"time"

	"github.com/chommie/chommie-server/internal/core"
	"github.com/chommie/chommie-server/internal/proto"
)

// defaultRoom is assumed when a message omits its room.
const defaultRoom = "General"

// inboundToCommand maps a wire envelope to a core command. A non-nil
// *proto.Error means the envelope was malformed and the client should get a
// protocol error reply; one bad frame never takes down the connection.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, &proto.Error{Code: "bad_request", Msg: "malformed join data"}
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: "bad_request", Msg: "room is required"}
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.Room,
		}, nil
	case proto.InboundTypeLeave:
		var leave proto.JoinData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, &proto.Error{Code: "bad_request", Msg: "malformed leave data"}
		}
		if leave.Room == "" {
			return nil, &proto.Error{Code: "bad_request", Msg: "room is required"}
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: leave.Room,
		}, nil
	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, &proto.Error{Code: "bad_request", Msg: "malformed msg data"}
		}
		msgType := msg.Type
		if msgType == "" {
			msgType = proto.MsgTypeMessage
		}
		if msgType == proto.MsgTypePrivate {
			return &core.Command{
				Kind:   core.CommandSendPrivateMessage,
				Target: msg.Target,
				Text:   msg.Msg,
			}, nil
		}
		room := msg.Room
		if room == "" {
			room = defaultRoom
		}
		return &core.Command{
			Kind: core.CommandSendRoomMessage,
			Room: room,
			Text: msg.Msg,
		}, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPresence:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventActiveUsers,
			Data: proto.ActiveUsersData{
				Users: event.Users,
			},
		}
	case core.EventRoomStatus:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventStatus,
			Data: proto.StatusData{
				Msg:       event.Text,
				Type:      event.Status,
				Timestamp: event.Timestamp.Format(time.RFC3339),
			},
		}
	case core.EventRoomMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data: proto.MessageData{
				Msg:       event.Text,
				Username:  event.From,
				Room:      event.Room,
				Timestamp: event.Timestamp.Format(time.RFC3339),
			},
		}
	case core.EventPrivateMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPrivateMessage,
			Data: proto.PrivateMessageData{
				Msg:       event.Text,
				From:      event.From,
				To:        event.To,
				Timestamp: event.Timestamp.Format(time.RFC3339),
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
