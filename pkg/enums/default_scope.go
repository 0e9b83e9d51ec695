package enums

import (
	"fmt"
	"strings"
)

// DefaultScope decides which addresses compete for the single default flag.
type DefaultScope string

const (
	// DefaultScopeOwner keeps one default per user; ownerless addresses share one slot.
	DefaultScopeOwner DefaultScope = "owner"
	// DefaultScopeGlobal keeps one default across every address.
	DefaultScopeGlobal DefaultScope = "global"
)

func (s DefaultScope) String() string {
	return string(s)
}

func (s DefaultScope) IsValid() bool {
	return s == DefaultScopeOwner || s == DefaultScopeGlobal
}

func ParseDefaultScope(value string) (DefaultScope, error) {
	scope := DefaultScope(strings.ToLower(strings.TrimSpace(value)))
	if !scope.IsValid() {
		return "", fmt.Errorf("invalid default address scope %q", value)
	}
	return scope, nil
}
