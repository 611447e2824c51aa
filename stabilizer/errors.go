// SPDX-License-Identifier: MIT

package stabilizer

import "errors"

// ErrNotPrepared is returned when an observable is queried before Prepare.
var ErrNotPrepared = errors.New("stabilizer: simulator has no prepared state")
