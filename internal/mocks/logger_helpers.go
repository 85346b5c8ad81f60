package mocks

import (
	"github.com/stretchr/testify/mock"
)

const maxLoggedFields = 8

// NewPermissiveLogger returns a Logger mock that accepts any call with up to
// maxLoggedFields fields at every level.
func NewPermissiveLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Logger {
	l := NewLogger(t)
	for n := 0; n <= maxLoggedFields; n++ {
		args := make([]interface{}, n)
		for i := range args {
			args[i] = mock.Anything
		}
		l.EXPECT().Debug(mock.Anything, args...).Maybe()
		l.EXPECT().Info(mock.Anything, args...).Maybe()
		l.EXPECT().Warn(mock.Anything, args...).Maybe()
		l.EXPECT().Error(mock.Anything, args...).Maybe()
	}
	return l
}
