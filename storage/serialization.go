// Copyright 2026 Wanderlens Labs
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


package storage

import (
	"fmt"

	"github.com/wanderlens/wanderlens/core"
)

// MarshalVideo serializes a Video to bytes.
func MarshalVideo(video *core.Video) []byte {
	buf := make([]byte, core.VideoMUS.Size(*video))
	core.VideoMUS.Marshal(*video, buf)
	return buf
}

// UnmarshalVideo deserializes a Video from bytes.
func UnmarshalVideo(data []byte) (*core.Video, error) {
	video, _, err := core.VideoMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &video, nil
}
