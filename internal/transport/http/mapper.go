package http

import (
	"context"
	"encoding/json"

	"github.com/ircwired/webirc-gateway/internal/core"
	"github.com/ircwired/webirc-gateway/internal/proto"
)

// applyInbound decodes a client event and invokes the matching gateway
// operation. Unknown event types are ignored; a payload that fails to
// decode is a protocol violation and returns an error.
func applyInbound(ctx context.Context, gw *core.Gateway, s *core.Session, inbound proto.Inbound) error {
	switch inbound.Type {
	case proto.InboundTypeRegister:
		var creds proto.CredentialsData
		if err := json.Unmarshal(inbound.Data, &creds); err != nil {
			return err
		}
		gw.Register(ctx, s, creds.Username, creds.Password)

	case proto.InboundTypeLogin:
		var creds proto.CredentialsData
		if err := json.Unmarshal(inbound.Data, &creds); err != nil {
			return err
		}
		gw.Login(ctx, s, creds.Username, creds.Password)

	case proto.InboundTypeConnect:
		var data proto.ConnectData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.Connect(ctx, s, core.ConnectRequest{
			Server:      data.Server,
			Port:        data.Port,
			Nick:        data.Nick,
			Secure:      data.Secure,
			Password:    data.Password,
			KeepAlive:   data.KeepAlive,
			Away:        data.Away,
			RealName:    data.RealName,
			Encoding:    data.Encoding,
			SelfSigned:  data.SelfSigned,
			StripColors: data.StripColors,
		})

	case proto.InboundTypeJoin:
		name, err := decodeString(inbound.Data)
		if err != nil {
			return err
		}
		gw.Join(ctx, s, name)

	case proto.InboundTypePart:
		name, err := decodeString(inbound.Data)
		if err != nil {
			return err
		}
		gw.Part(ctx, s, name)

	case proto.InboundTypeSay:
		var data proto.SayData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.Say(ctx, s, data.Target, data.Message)

	case proto.InboundTypeAction:
		var data proto.ActionData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.Action(ctx, s, data.Target, data.Message)

	case proto.InboundTypeWhois:
		var data proto.WhoisData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.Whois(ctx, s, data.Nick)

	case proto.InboundTypeTopic:
		var data proto.TopicData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.Topic(ctx, s, data.Name, data.Topic)

	case proto.InboundTypeNick:
		var data proto.NickData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.Nick(ctx, s, data.Nick)

	case proto.InboundTypeCommand:
		text, err := decodeString(inbound.Data)
		if err != nil {
			return err
		}
		gw.Command(ctx, s, text)

	case proto.InboundTypeLogout:
		gw.Logout(ctx, s)

	case proto.InboundTypeGetOldMessages:
		var data proto.GetOldMessagesData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return err
		}
		gw.OldMessages(ctx, s, data.ChannelName, data.Amount, data.Skip)
	}

	return nil
}

// decodeString unwraps the bare JSON string payloads of join, part and
// command events.
func decodeString(data json.RawMessage) (string, error) {
	var out string
	if err := json.Unmarshal(data, &out); err != nil {
		return "", err
	}
	return out, nil
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRegisterSuccess:
		return proto.Outbound{
			Event: proto.OutboundTypeRegisterSuccess,
			Data:  proto.SuccessData{Username: event.Username},
		}
	case core.EventRegisterError:
		return proto.Outbound{
			Event: proto.OutboundTypeRegisterError,
			Data:  proto.ErrorData{Message: event.Message},
		}
	case core.EventLoginSuccess:
		return proto.Outbound{
			Event: proto.OutboundTypeLoginSuccess,
			Data:  proto.LoginSuccessData{Username: event.Username, Exists: event.Exists},
		}
	case core.EventLoginError:
		return proto.Outbound{
			Event: proto.OutboundTypeLoginError,
			Data:  proto.ErrorData{Message: event.Message},
		}
	case core.EventConnectError:
		return proto.Outbound{
			Event: proto.OutboundTypeConnectError,
			Data:  proto.ErrorData{Message: event.Message},
		}
	case core.EventReset:
		return proto.Outbound{Event: proto.OutboundTypeReset}
	case core.EventOldMessages:
		messages := make([]proto.HistoryMessage, 0, len(event.History))
		for _, msg := range event.History {
			messages = append(messages, proto.HistoryMessage{
				From: msg.From,
				Text: msg.Text,
				At:   msg.At.Unix(),
			})
		}
		return proto.Outbound{
			Event: proto.OutboundTypeOldMessages,
			Data:  proto.OldMessagesData{Name: event.Channel, Messages: messages},
		}
	case core.EventBridge:
		return proto.Outbound{
			Event: event.Bridge.Name,
			Data:  event.Bridge.Data,
		}
	default:
		return proto.Outbound{Event: "unknown"}
	}
}
