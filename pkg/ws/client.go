package ws

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

type MessageInfo struct {
	msg             []byte
	needCompression bool
}

type Client struct {
	Conn *websocket.Conn
	R    chan []byte
	W    chan MessageInfo

	writeWait time.Duration
	pongWait  time.Duration
}

// NewClient wraps an upgraded connection with buffered read and write pumps.
// A zero writeWait or pongWait disables the corresponding deadline.
func NewClient(conn *websocket.Conn, writeWait, pongWait time.Duration) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn:      conn,
		R:         make(chan []byte, 128),
		W:         make(chan MessageInfo, 128),
		writeWait: writeWait,
		pongWait:  pongWait,
	}

	if pongWait > 0 {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.Conn.SetPongHandler(func(string) error {
			return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if c.pongWait > 0 {
			c.Conn.SetReadDeadline(time.Now().Add(c.pongWait))
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
			continue
		}

		if t == websocket.BinaryMessage {
			originMsg, err := Decompress(msg)
			if err != nil {
				continue
			}

			c.R <- originMsg
		}
	}
}

func (c *Client) runWriter() {
	defer close(c.W)

	for {
		msgInfo := <-c.W

		msg := msgInfo.msg
		msgType := websocket.TextMessage
		if msgInfo.needCompression {
			var err error
			msg, err = Compress(msgInfo.msg)
			if err != nil {
				continue
			}
			msgType = websocket.BinaryMessage
		}

		if c.writeWait > 0 {
			c.Conn.SetWriteDeadline(time.Now().Add(c.writeWait))
		}

		if err := c.Conn.WriteMessage(msgType, msg); err != nil {
			break
		}
	}
}

func (c *Client) Write(msg []byte, needCompression bool) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if s, ok := r.(string); ok {
			err = errors.New(s)
		} else {
			err = errors.New("connection is closed")
		}
	}()

	c.W <- MessageInfo{msg: msg, needCompression: needCompression}
	return nil
}

func (c *Client) Close() error {
	return c.Conn.Close()
}
