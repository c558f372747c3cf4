// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

var VideoMUS = videoMUS{}

type videoMUS struct{}

func (s videoMUS) Marshal(v Video, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.URL, bs[n:])
	n += varint.Int.Marshal(v.DurationSeconds, bs[n:])
	n += ord.String.Marshal(v.Transcript, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	return n + varint.Int.Marshal(v.PlacesFound, bs[n:])
}

func (s videoMUS) Unmarshal(bs []byte) (v Video, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DurationSeconds, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Transcript, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PlacesFound, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s videoMUS) Size(v Video) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.URL)
	size += varint.Int.Size(v.DurationSeconds)
	size += ord.String.Size(v.Transcript)
	size += ord.String.Size(v.Summary)
	return size + varint.Int.Size(v.PlacesFound)
}

func (s videoMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}
