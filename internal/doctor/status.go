package doctor

import (
	"fmt"
	"net"
)

// StatusAddrCheck verifies the status server address can be bound.
type StatusAddrCheck struct {
	Addr string
}

func (c *StatusAddrCheck) Name() string     { return "status_addr" }
func (c *StatusAddrCheck) Category() string { return CategoryStatus }

func (c *StatusAddrCheck) Run() CheckResult {
	if c.Addr == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Status server disabled",
		}
	}

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot listen on %s: %v", c.Addr, err),
			Suggestion: "Pick a free address with --status-addr",
		}
	}
	ln.Close()

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Status server can listen on %s", c.Addr),
	}
}
