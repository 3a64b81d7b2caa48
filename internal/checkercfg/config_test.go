/*
 * Copyright 2026 The Inlt Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package checkercfg

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	if c.Logger == nil {
		t.Error("NewConfig() should set a default Logger")
	}
	if c.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", c.Workers)
	}
	if c.JSON {
		t.Error("JSON should default to false")
	}
}

func TestWorkersClampedToOne(t *testing.T) {
	c := NewConfig(WithWorkers(0))
	if c.Workers != 1 {
		t.Errorf("Workers = %d, want clamped to 1", c.Workers)
	}
	c = NewConfig(WithWorkers(-5))
	if c.Workers != 1 {
		t.Errorf("Workers = %d, want clamped to 1", c.Workers)
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	c := NewConfig(WithWorkers(4), WithFilterExpr("message contains \"x\""), WithJSON(true))
	if c.Workers != 4 {
		t.Errorf("Workers = %d, want 4", c.Workers)
	}
	if c.FilterExpr == "" {
		t.Error("FilterExpr should be set")
	}
	if !c.JSON {
		t.Error("JSON should be true")
	}
}
