package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"net"

	"github.com/google/uuid"

	"fenrir/internal/common"
	"fenrir/internal/wire"
)

// sendAndPrint writes one wire frame to the server at addr, then prints
// every reply line the server writes back before the connection's read
// deadline fires, mirroring the teacher's client's habit of keeping the
// connection open to read execution reports after sending a command.
func sendAndPrint(addr string, frame []byte) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("send frame: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		fmt.Println(scanner.Text())
	}
	return nil
}

func header(t wire.MessageType) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(t))
	return buf
}

func putUUID(buf []byte, offset int, id uuid.UUID) {
	copy(buf[offset:offset+16], id[:])
}

func putInt32(buf []byte, offset int, v int32) {
	binary.BigEndian.PutUint32(buf[offset:offset+4], uint32(v))
}

func putLenPrefixedString(buf []byte, offset int, s string) int {
	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(s)))
	offset += 2
	copy(buf[offset:], s)
	return offset + len(s)
}

func parseSide(s string) (common.OrderSide, error) {
	switch s {
	case "buy":
		return common.Buy, nil
	case "sell":
		return common.Sell, nil
	default:
		return 0, fmt.Errorf("invalid side %q (want buy|sell)", s)
	}
}
