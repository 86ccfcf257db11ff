package mock

import "sync"

type StaticConsent struct {
	mtx      sync.Mutex
	Answer   bool
	Err      error
	Messages []string
}

func (c *StaticConsent) Confirm(msg string) (bool, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.Messages = append(c.Messages, msg)
	return c.Answer, c.Err
}

func (c *StaticConsent) Calls() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.Messages)
}
