// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

// Threshold pairs an inclusive upper cutoff with the label assigned to
// values at or below it.
type Threshold struct {
	Cutoff float64 `yaml:"cutoff"`
	Label  string  `yaml:"label"`
}

// Classifier maps a numeric metric to a label via ordered cutoffs.
// Thresholds must be sorted by ascending cutoff; values above every
// cutoff get the Terminal label.
type Classifier struct {
	Thresholds []Threshold `yaml:"thresholds"`
	Terminal   string      `yaml:"terminal"`
}

// Classify returns the label of the first threshold whose cutoff the
// value does not exceed. The mapping is monotonic: a larger value never
// maps to an earlier label.
func (c Classifier) Classify(v float64) string {
	for _, t := range c.Thresholds {
		if v <= t.Cutoff {
			return t.Label
		}
	}
	return c.Terminal
}
