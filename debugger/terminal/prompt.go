// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

package terminal

import (
	"strings"
)

// Prompt specifies the prompt text and the prompt style
type Prompt struct {
	Type PromptType

	// the content
	Content string
}

// PromptType identifies the type of information in the prompt.
type PromptType int

// List of prompt types.
const (
	PromptTypeCPUStep PromptType = iota
	PromptTypeConfirm
)

// String returns the prompt with "standard" decoration.
func (p Prompt) String() string {
	if p.Type == PromptTypeConfirm {
		return p.Content
	}

	s := strings.Builder{}
	s.WriteString("[ ")
	s.WriteString(strings.TrimSpace(p.Content))
	s.WriteString(" ] >> ")

	return s.String()
}
