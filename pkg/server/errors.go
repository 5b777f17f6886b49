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

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/serializer"
)

// Error codes specific to the HTTP surface; domain codes come from
// pkg/errors.
const (
	errCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	errCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	errCodeJobsPaused        = "JOBS_PAUSED"
	errCodeConflict          = "CONFLICT"
)

// ErrorResponse is the JSON body of every error the API returns.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// writeError writes error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// writeDomainError maps a domain error to its HTTP status and writes it.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status, retryable := statusFor(code)
	s.writeError(w, r, status, string(code), err.Error(), retryable, nil)
}

func statusFor(code errors.ErrorCode) (status int, retryable bool) {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest, false
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case errors.ErrCodeLLM, errors.ErrCodeLLMParse:
		return http.StatusBadGateway, true
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}
