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

package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// PowerShellRunner executes commands through the Windows PowerShell
// binary. Path overrides the binary name, mainly for pwsh installs.
type PowerShellRunner struct {
	Path string
}

func (r *PowerShellRunner) Run(ctx context.Context, command string) ([]byte, error) {
	name := r.Path
	if name == "" {
		name = "powershell.exe"
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("powershell not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, "-NoProfile", "-NonInteractive", "-Command", command)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("powershell failed: %s", bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("failed to execute powershell: %w", err)
	}
	return bytes.TrimSpace(output), nil
}
