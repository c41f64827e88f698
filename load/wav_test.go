// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildWav(samples []byte) []byte {
	hdr := wavHeader{
		RiffID: [4]byte{'R', 'I', 'F', 'F'}, WaveID: [4]byte{'W', 'A', 'V', 'E'},
		Fmt: [4]byte{'f', 'm', 't', ' '}, FmtSize: 16, AudioFormat: 1,
		Channels: 1, Frequency: 44100, ByteRate: 44100 * 2, BlockAlign: 2,
		SampleBits: 16, DataID: [4]byte{'d', 'a', 't', 'a'}, DataSize: uint32(len(samples)),
	}
	hdr.FileSize = 36 + hdr.DataSize
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, hdr)
	buf.Write(samples)
	return buf.Bytes()
}

func TestWavLoad(t *testing.T) {
	samples := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	d := &SndData{}
	if err := Wav(bytes.NewReader(buildWav(samples)), d); err != nil {
		t.Fatalf("loading wave failed: %s", err)
	}
	if int(d.Attrs.DataSize) != len(d.Data) {
		t.Errorf("expected data size %d, got %d", d.Attrs.DataSize, len(d.Data))
	}
	if d.Attrs.Channels != 1 || d.Attrs.Frequency != 44100 || d.Attrs.SampleBits != 16 {
		t.Errorf("unexpected wav attributes: %+v", d.Attrs)
	}
}

func TestWavRejectsNonRiff(t *testing.T) {
	bad := buildWav([]byte{0, 1})
	bad[0] = 'X'
	d := &SndData{}
	if err := Wav(bytes.NewReader(bad), d); err == nil {
		t.Error("expected an error loading a non-RIFF file")
	}
}
