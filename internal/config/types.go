// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlugin is the sentinel error wrapped by UnsupportedPluginError.
var ErrUnsupportedPlugin = errors.New("unsupported plugin name")

// UnsupportedPluginError is returned when the configuration file names a
// plugin other than file_system. It wraps ErrUnsupportedPlugin for
// errors.Is() compatibility.
type UnsupportedPluginError struct {
	Value string
}

// Error implements the error interface.
func (e *UnsupportedPluginError) Error() string {
	return fmt.Sprintf("plugin %q is not supported, expected %q", e.Value, PluginName)
}

// Unwrap returns the sentinel error.
func (e *UnsupportedPluginError) Unwrap() error { return ErrUnsupportedPlugin }
