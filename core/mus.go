// Copyright 2025 Poiesic Systems
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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types that cross the storage boundary.
// Timestamps are stored as Unix microseconds.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

// Marshal writes the ID into bs and returns the number of bytes written.
func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

// Unmarshal reads an ID from bs.
func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

// Size returns the serialized size of the ID.
func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

// ChunkMetadataMUS serializes ChunkMetadata values.
var ChunkMetadataMUS = chunkMetadataMUS{}

type chunkMetadataMUS struct{}

func (chunkMetadataMUS) Marshal(v ChunkMetadata, bs []byte) (n int) {
	n = varint.Int.Marshal(v.TargetChunkSize, bs)
	n += varint.Float64.Marshal(v.SimilarityThreshold, bs[n:])
	n += ord.String.Marshal(v.OracleModel, bs[n:])
	return n
}

func (chunkMetadataMUS) Unmarshal(bs []byte) (v ChunkMetadata, n int, err error) {
	var n1 int
	v.TargetChunkSize, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.SimilarityThreshold, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.OracleModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (chunkMetadataMUS) Size(v ChunkMetadata) (size int) {
	size = varint.Int.Size(v.TargetChunkSize)
	size += varint.Float64.Size(v.SimilarityThreshold)
	size += ord.String.Size(v.OracleModel)
	return size
}

// ChunkMUS serializes Chunks.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.DocumentId, bs[n:])
	n += ord.String.Marshal(v.Contents, bs[n:])
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += varint.Int.Marshal(v.TokenCount, bs[n:])
	n += varint.Int.Marshal(len(v.Vector), bs[n:])
	for _, f := range v.Vector {
		n += varint.Float32.Marshal(f, bs[n:])
	}
	n += ChunkMetadataMUS.Marshal(v.Metadata, bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.DocumentId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Contents, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.TokenCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	var vectorLen int
	vectorLen, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	if vectorLen > 0 {
		v.Vector = make([]float32, vectorLen)
		for i := 0; i < vectorLen; i++ {
			v.Vector[i], n1, err = varint.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return v, n, err
			}
		}
	}
	v.Metadata, n1, err = ChunkMetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.InsertedAt = time.UnixMicro(micros).UTC()
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.DocumentId)
	size += ord.String.Size(v.Contents)
	size += varint.Int.Size(v.Index)
	size += varint.Int.Size(v.TokenCount)
	size += varint.Int.Size(len(v.Vector))
	for _, f := range v.Vector {
		size += varint.Float32.Size(f)
	}
	size += ChunkMetadataMUS.Size(v.Metadata)
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	size += varint.Int64.Size(v.UpdatedAt.UnixMicro())
	return size
}
