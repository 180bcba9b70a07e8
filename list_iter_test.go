/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rfl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hugeList reports math.MaxInt elements, all the same value.
type hugeList struct {
	*DynamicList
	elem Value
}

func (h *hugeList) Len() int { return math.MaxInt }

func (h *hugeList) Get(index int) (Value, bool) {
	if index < 0 || index >= math.MaxInt {
		return nil, false
	}
	return h.elem, true
}

func TestListIter_ExhaustsAtMaxIndex(t *testing.T) {
	l := &hugeList{DynamicList: NewDynamicList(), elem: New(7)}
	it := NewListIter(l)
	it.index = math.MaxInt - 1

	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 7, v.Any())
	assert.Equal(t, math.MaxInt, it.index)

	for range 3 {
		v, ok = it.Next()
		assert.False(t, ok)
		assert.Nil(t, v)
		assert.Equal(t, math.MaxInt, it.index)
	}

	lo, hi := it.SizeHint()
	assert.Equal(t, math.MaxInt, lo)
	assert.Equal(t, math.MaxInt, hi)
}

func TestListIter_ResumesWhenListGrows(t *testing.T) {
	d := NewDynamicList(New(1))
	it := d.Iter()

	_, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	require.Equal(t, 1, it.index)

	d.Push(New(2))
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 2, v.Any())
}

func TestListIter_SizeHintTracksLength(t *testing.T) {
	d := NewDynamicList(New(1), New(2), New(3))
	it := d.Iter()
	_, _ = it.Next()

	lo, hi := it.SizeHint()
	assert.Equal(t, 3, lo)
	assert.Equal(t, 3, hi)
}
