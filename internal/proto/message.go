package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	InboundTypeRegister       = "register"
	InboundTypeLogin          = "login"
	InboundTypeConnect        = "connect"
	InboundTypeJoin           = "join"
	InboundTypePart           = "part"
	InboundTypeSay            = "say"
	InboundTypeAction         = "action"
	InboundTypeWhois          = "whois"
	InboundTypeTopic          = "topic"
	InboundTypeNick           = "nick"
	InboundTypeCommand        = "command"
	InboundTypeLogout         = "logout"
	InboundTypeGetOldMessages = "getOldMessages"
)

// Outbound event names emitted by the gateway itself. Bridge-originated
// events pass through with whatever name the bridge assigned.
const (
	OutboundTypeRegisterSuccess = "register_success"
	OutboundTypeRegisterError   = "register_error"
	OutboundTypeLoginSuccess    = "login_success"
	OutboundTypeLoginError      = "login_error"
	OutboundTypeConnectError    = "connect_error"
	OutboundTypeReset           = "reset"
	OutboundTypeOldMessages     = "oldMessages"
)

// CredentialsData is the payload of register and login events.
type CredentialsData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ConnectData is the payload of a connect event. Port, away and
// realName fall back to server defaults when absent.
type ConnectData struct {
	Server      string `json:"server"`
	Port        int    `json:"port,omitempty"`
	Nick        string `json:"nick"`
	Secure      bool   `json:"secure,omitempty"`
	Password    string `json:"password,omitempty"`
	KeepAlive   bool   `json:"keepAlive,omitempty"`
	Away        string `json:"away,omitempty"`
	RealName    string `json:"realName,omitempty"`
	Encoding    string `json:"encoding,omitempty"`
	SelfSigned  bool   `json:"selfSigned,omitempty"`
	StripColors bool   `json:"stripColors,omitempty"`
}

// SayData is the payload of a say event.
type SayData struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// ActionData is the payload of an action event.
type ActionData struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// WhoisData is the payload of a whois event.
type WhoisData struct {
	Nick string `json:"nick"`
}

// TopicData is the payload of a topic event.
type TopicData struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// NickData is the payload of a nick event.
type NickData struct {
	Nick string `json:"nick"`
}

// GetOldMessagesData is the payload of a getOldMessages event.
type GetOldMessagesData struct {
	ChannelName string `json:"channelName"`
	Amount      int    `json:"amount"`
	Skip        int    `json:"skip"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// SuccessData confirms registration.
type SuccessData struct {
	Username string `json:"username"`
}

// LoginSuccessData confirms login, reporting whether a saved IRC
// connection already exists for the user.
type LoginSuccessData struct {
	Username string `json:"username"`
	Exists   bool   `json:"exists"`
}

// ErrorData carries the human-readable message of an *_error event.
type ErrorData struct {
	Message string `json:"message"`
}

// OldMessagesData delivers a page of channel history, newest first.
type OldMessagesData struct {
	Name     string           `json:"name"`
	Messages []HistoryMessage `json:"messages"`
}

// HistoryMessage is one replayed line. The author travels as "from"
// even though storage names the field differently.
type HistoryMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
	At   int64  `json:"at"`
}
