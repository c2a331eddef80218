// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

package vm

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type closeBuffer struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (b *closeBuffer) Close() error {
	b.closed = true
	return b.closeErr
}

func TestWriteAndClose(t *testing.T) {
	b := &closeBuffer{}
	require.NoError(t, writeAndClose(b, []Cell{1, 2, 99}))
	require.True(t, b.closed)
	require.Equal(t, "1,2,99\n", b.String())

	errClose := errors.New("disk full")
	b = &closeBuffer{closeErr: errClose}
	err := writeAndClose(b, []Cell{99})
	require.Error(t, err)
	require.Equal(t, errClose, errors.Cause(err))
	require.True(t, b.closed)
}
