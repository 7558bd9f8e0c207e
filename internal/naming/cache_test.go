// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package naming

import (
	"sync"
	"testing"
)

func TestCache(t *testing.T) {
	c, err := NewCache(New(testSuffixes), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	n := c.TypeName("VkSurfaceKHR")
	if !n.OK || n.Base != "Surface" || n.Ext != "KHR" || n.Go() != "SurfaceKHR" {
		t.Errorf("TypeName(VkSurfaceKHR) = %+v", n)
	}
	if n := c.TypeName("uint32_t"); n.OK {
		t.Errorf("TypeName(uint32_t) = %+v, want not ok", n)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	c, err := NewCache(New(testSuffixes), 16)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	names := []string{"VkSurfaceKHR", "VkQueueFlagBits", "VkBuffer", "VkImageViewHandleInfoNVX"}
	want := []string{"SurfaceKHR", "QueueFlags", "Buffer", "ImageViewHandleInfoNVX"}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, raw := range names {
				if got := c.TypeName(raw).Go(); got != want[i] {
					t.Errorf("TypeName(%q).Go() = %q, want %q", raw, got, want[i])
				}
			}
		}()
	}
	wg.Wait()
}
