package domain

import (
	"fmt"
	"time"
)

// APIProfile describes one report backend the dashboard can talk to.
type APIProfile struct {
	Name    string
	BaseURL string
	Token   string
	Timeout time.Duration
}

func (p APIProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.BaseURL)
}
