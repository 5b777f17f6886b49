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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analysis run metrics
	analysisRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "winspect_analysis_run_duration_seconds",
			Help:    "Time taken to analyze a complete snapshot",
			Buckets: []float64{10, 30, 60, 300, 600, 1800},
		},
	)

	analysisCategoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "winspect_analysis_category_duration_seconds",
			Help:    "Time taken to analyze individual categories",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"category"},
	)

	analysisCategoryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winspect_analysis_category_total",
			Help: "Total number of category analysis attempts",
		},
		[]string{"category", "status"}, // success or error
	)

	llmCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winspect_llm_calls_total",
			Help: "Total number of LLM completion calls",
		},
		[]string{"category", "status"}, // success or error
	)
)
