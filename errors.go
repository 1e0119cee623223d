// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

import "errors"

// ErrInvalidDimensions is returned by New when the width or height is zero.
var ErrInvalidDimensions = errors.New("life: grid dimensions must be positive")
