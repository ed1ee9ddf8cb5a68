package broadcast

import "context"

// LocalNotifier delivers signals synchronously inside the process.
type LocalNotifier struct {
	reg registry
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{}
}

func (n *LocalNotifier) Publish(_ context.Context, sig Signal) error {
	n.reg.dispatch(sig)
	return nil
}

func (n *LocalNotifier) Subscribe(l Listener) func() {
	return n.reg.add(l)
}
