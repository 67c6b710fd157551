package obsolete

import (
	"io"
	"io/ioutil"
)

func read(r io.Reader) ([]byte, error) {
	return ioutil.ReadAll(r) // want "ioutil.ReadAll is deprecated; use io.ReadAll"
}
