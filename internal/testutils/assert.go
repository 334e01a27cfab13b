package testutils

import (
	"fmt"
	"net"
	"strconv"
)

func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func MustNoErr(err error) {
	if err != nil {
		panic(err)
	}
}

func Ignore(err error) {
	if err != nil {
		fmt.Printf("Error ignored: %v\n", err) // nolint:forbidigo
	}
}

// MustSplitHostPort splits "127.0.0.1:8443" into its host and numeric port.
func MustSplitHostPort(addr string) (string, int) {
	host, rawPort := Must2(net.SplitHostPort(addr))
	return host, Must(strconv.Atoi(rawPort))
}

func Must2[T, U any](t T, u U, err error) (T, U) {
	if err != nil {
		panic(err)
	}
	return t, u
}
