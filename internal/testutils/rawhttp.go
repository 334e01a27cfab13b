package testutils

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
)

// RawHTTPServer answers every request with a fixed status line.
// Unlike httptest.Server it lets the reason phrase be anything, e.g. "429 Slow Down".
type RawHTTPServer struct {
	URL string

	statusLine string
	body       string
	listener   net.Listener
	hits       atomic.Int64
	wg         sync.WaitGroup
}

func NewRawHTTPServer(statusLine, body string) *RawHTTPServer {
	listener := Must(net.Listen("tcp", "127.0.0.1:0"))
	svr := &RawHTTPServer{
		URL:        "http://" + listener.Addr().String(),
		statusLine: statusLine,
		body:       body,
		listener:   listener,
	}
	svr.wg.Add(1)
	go svr.serve()
	return svr
}

func (s *RawHTTPServer) Hits() int {
	return int(s.hits.Load())
}

func (s *RawHTTPServer) Close() {
	Ignore(s.listener.Close())
	s.wg.Wait()
}

func (s *RawHTTPServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *RawHTTPServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	req, err := http.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		return
	}
	defer req.Body.Close()
	s.hits.Add(1)

	resp := fmt.Sprintf(
		"HTTP/1.1 %s\r\nContent-Type: text/plain\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s",
		s.statusLine, len(s.body), s.body,
	)
	conn.Write([]byte(resp)) // nolint: errcheck
}
