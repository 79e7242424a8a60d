package sysload

import (
	"errors"
	"net"
)

// probeTarget is only used to pick the outbound interface; no packet is sent
// because UDP "connect" just binds a route.
const probeTarget = "8.8.8.8:80"

var errNoAddress = errors.New("no local address")

// LocalAddress returns the IPv4 address of the interface holding the
// default route, falling back to the first non-loopback interface address.
func LocalAddress() (string, error) {
	if conn, err := net.Dial("udp4", probeTarget); err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && !addr.IP.IsUnspecified() {
			return addr.IP.String(), nil
		}
	}
	return firstInterfaceAddress()
}

func firstInterfaceAddress() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", errNoAddress
}
