package common

// AutoConsent answers yes to every prompt, used when running with --confirm.
type AutoConsent struct{}

func (AutoConsent) Confirm(msg string) (bool, error) {
	return true, nil
}
