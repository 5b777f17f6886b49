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

package llm

import (
	"encoding/json"
	"strings"

	"github.com/mchmarny/winspect/pkg/errors"
)

// thinkingMarkers are reasoning-model prefixes that some local models leak
// into their output. Content between an opening and closing marker pair is
// removed before JSON extraction.
var thinkingMarkers = [][2]string{
	{"<think>", "</think>"},
	{"<thought>", "</thought>"},
	{"<|reasoning|>", "<|/reasoning|>"},
}

// ExtractObject locates and parses the first well-formed JSON object in a
// model completion, tolerating surrounding prose, markdown fencing, and
// leaked reasoning markers. When no parseable object exists, it returns a
// structured LLM_PARSE_FAILED error; it never panics.
func ExtractObject(text string) (json.RawMessage, error) {
	cleaned := stripThinking(text)

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(cleaned[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil && len(raw) > 0 && raw[0] == '{' {
			return raw, nil
		}
	}

	return nil, errors.New(errors.ErrCodeLLMParse, "no JSON object found in model response")
}

// stripThinking removes reasoning-marker blocks from a completion. An
// unclosed opening marker drops everything from the marker on, since models
// that truncate mid-thought produce no usable payload after it.
func stripThinking(text string) string {
	for _, pair := range thinkingMarkers {
		for {
			start := strings.Index(text, pair[0])
			if start == -1 {
				break
			}
			end := strings.Index(text[start:], pair[1])
			if end == -1 {
				text = text[:start]
				break
			}
			text = text[:start] + text[start+end+len(pair[1]):]
		}
	}
	return text
}
