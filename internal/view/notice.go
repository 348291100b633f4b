package view

// Notices records blocking notices (the browser's alert()).
type Notices struct {
	last  string
	count int
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Notify(msg string) {
	n.last = msg
	n.count++
}

// Last returns the most recent notice and how many have been shown.
func (n *Notices) Last() (string, int) {
	return n.last, n.count
}
