package obsolete

import "io/ioutil"

func write(name string, data []byte) error {
	return ioutil.WriteFile(name, data, 0o600) // want "ioutil.WriteFile is deprecated; use os.WriteFile"
}
