package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/gookit/color"
	flag "github.com/spf13/pflag"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run connects to the server and shuttles lines both ways: everything the
// server sends is printed, everything typed is sent. The server drives the
// whole conversation, including the naming handshake.
func run() (int, error) {
	host := flag.StringP("host", "H", "127.0.0.1", "Server host to connect to")
	port := flag.IntP("port", "p", 4747, "Server port to connect to")
	flag.Parse()

	if *port < 1 || *port > 65535 {
		return exitConfig, fmt.Errorf("invalid port: %d", *port)
	}

	address := net.JoinHostPort(*host, strconv.Itoa(*port))
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	color.Green.Printf("Connected to %s\n", address)

	// Read pump: prints server lines until the channel closes, either because
	// we quit, we were kicked, or the server shut down.
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}
	}()

	// Write pump: forwards stdin lines. Closing the connection on stdin EOF
	// unblocks the read pump.
	go func() {
		stdin := bufio.NewScanner(os.Stdin)
		for stdin.Scan() {
			if _, err := fmt.Fprintf(conn, "%s\n", stdin.Text()); err != nil {
				return
			}
		}
		_ = conn.Close()
	}()

	<-done
	color.Yellow.Println("Disconnected from the server.")
	return exitOK, nil
}
