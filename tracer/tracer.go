// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package tracer

import (
	"fmt"
	"sync"
)

var (
	mu            sync.Mutex
	traceMessages []string
)

// Log adds a message to the trace log. Safe for concurrent use; documents
// are processed in parallel.
func Log(msg string) {
	mu.Lock()
	traceMessages = append(traceMessages, msg)
	mu.Unlock()
}

// Flush prints the accumulated trace log and resets it.
func Flush() {
	mu.Lock()
	msgs := traceMessages
	traceMessages = nil
	mu.Unlock()

	for _, msg := range msgs {
		fmt.Println(msg)
	}
}

// Reset discards the accumulated trace log without printing it.
func Reset() {
	mu.Lock()
	traceMessages = nil
	mu.Unlock()
}
