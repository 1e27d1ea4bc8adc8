// Command ws_probe is a line-oriented client for poking a running
// gateway by hand:
//
//	/register alice secret
//	/login alice secret
//	/connect irc.libera.chat mynick
//	/join #go
//	/say #go hello there
//	/logout
//
// Anything else is sent as a raw IRC command line.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ircwired/webirc-gateway/internal/proto"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("ws_probe: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "gateway WebSocket address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	go func() {
		for {
			var frame struct {
				Event string          `json:"event"`
				Data  json.RawMessage `json:"data"`
			}
			if err := wsjson.Read(ctx, conn, &frame); err != nil {
				log.Printf("read: %v", err)
				stop()
				return
			}
			fmt.Printf("<< %s %s\n", frame.Event, frame.Data)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		inbound, err := parseLine(line)
		if err != nil {
			log.Printf("parse: %v", err)
			continue
		}
		if err := wsjson.Write(ctx, conn, inbound); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return scanner.Err()
}

func parseLine(line string) (proto.Inbound, error) {
	if !strings.HasPrefix(line, "/") {
		return envelope(proto.InboundTypeCommand, line)
	}

	fields := strings.Fields(line)
	verb := strings.TrimPrefix(fields[0], "/")
	args := fields[1:]

	switch verb {
	case "register", "login":
		if len(args) != 2 {
			return proto.Inbound{}, fmt.Errorf("usage: /%s <username> <password>", verb)
		}
		return envelope(verb, proto.CredentialsData{Username: args[0], Password: args[1]})
	case "connect":
		if len(args) < 2 {
			return proto.Inbound{}, errors.New("usage: /connect <server> <nick>")
		}
		return envelope(verb, proto.ConnectData{Server: args[0], Nick: args[1]})
	case "join", "part":
		if len(args) != 1 {
			return proto.Inbound{}, fmt.Errorf("usage: /%s <channel>", verb)
		}
		return envelope(verb, args[0])
	case "say":
		if len(args) < 2 {
			return proto.Inbound{}, errors.New("usage: /say <target> <message>")
		}
		return envelope(verb, proto.SayData{Target: args[0], Message: strings.Join(args[1:], " ")})
	case "nick":
		if len(args) != 1 {
			return proto.Inbound{}, errors.New("usage: /nick <nick>")
		}
		return envelope(verb, proto.NickData{Nick: args[0]})
	case "whois":
		if len(args) != 1 {
			return proto.Inbound{}, errors.New("usage: /whois <nick>")
		}
		return envelope(verb, proto.WhoisData{Nick: args[0]})
	case "logout":
		return proto.Inbound{Type: proto.InboundTypeLogout}, nil
	default:
		return proto.Inbound{}, fmt.Errorf("unknown command %q", verb)
	}
}

func envelope(eventType string, data any) (proto.Inbound, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return proto.Inbound{}, err
	}
	return proto.Inbound{Type: eventType, Data: payload}, nil
}
