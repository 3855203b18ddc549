package terminal

import (
	"bytes"
	"io"
	"time"
)

// fakeRead is one scripted result of Backend.Read
type fakeRead struct {
	data    []byte
	resize  bool
	timeout bool
}

// fakeBackend records output and replays scripted input
type fakeBackend struct {
	out    bytes.Buffer
	reads  []fakeRead
	w, h   int
	writes int

	initErr   error
	finiErr   error
	failWrite func(p []byte) error
	lateFail  bool // failWrite errors are reported after the bytes reach out

	inits int
	finis int
}

func newFakeBackend(reads ...fakeRead) *fakeBackend {
	return &fakeBackend{reads: reads, w: 80, h: 24}
}

func (f *fakeBackend) Init() error {
	f.inits++
	return f.initErr
}

func (f *fakeBackend) Fini() error {
	f.finis++
	return f.finiErr
}

func (f *fakeBackend) Size() (int, int) { return f.w, f.h }

func (f *fakeBackend) Write(p []byte) (int, error) {
	f.writes++
	if f.failWrite != nil {
		if err := f.failWrite(p); err != nil {
			if f.lateFail {
				f.out.Write(p)
			}
			return 0, err
		}
	}
	return f.out.Write(p)
}

func (f *fakeBackend) Read(p []byte, timeout time.Duration) (int, bool, error) {
	if len(f.reads) == 0 {
		if timeout >= 0 {
			return 0, false, nil
		}
		return 0, false, io.EOF
	}
	r := f.reads[0]
	switch {
	case r.resize:
		f.reads = f.reads[1:]
		return 0, true, nil
	case r.timeout:
		f.reads = f.reads[1:]
		return 0, false, nil
	}
	n := copy(p, r.data)
	if n < len(r.data) {
		f.reads[0].data = r.data[n:]
	} else {
		f.reads = f.reads[1:]
	}
	return n, false, nil
}

func chunk(s string) fakeRead { return fakeRead{data: []byte(s)} }
