package logging

import "go.uber.org/zap"

// New returns a development logger when dev is set, a production one otherwise.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
