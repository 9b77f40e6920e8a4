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

package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jetsetilly/gophernes/archivefs"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// LoaderError is the error pattern for all errors returned by the package.
const LoaderError = "cartridgeloader: %v"

// Loader is used to specify the cartridge to use when Attach()ing to the NES.
type Loader struct {
	// filename of cartridge to load.
	Filename string

	// expected hash of the loaded cartridge. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte

	// the decoded cartridge. only valid after a successful call to Load()
	Config  mapper.Config
	PRG     []uint8
	CHR     []uint8
	Trainer []uint8
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
	}
}

// FileExtensions is the list of file extensions that are recognised by the
// cartridgeloader package.
var FileExtensions = [...]string{".NES"}

// ShortName returns a shortened version of the CartridgeLoader filename.
func (cl Loader) ShortName() string {
	shortCartName := path.Base(cl.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, path.Ext(cl.Filename))
	return shortCartName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data and decode it. Loader filenames with a valid schema
// will use that method to load the data. Currently supported schemes are HTTP
// and local files.
//
// Local files can be inside a zip archive. If the filename is the archive
// itself then the first file in the archive with one of the FileExtensions is
// loaded and the Filename field is updated to the path of that file.
func (cl *Loader) Load() error {
	if len(cl.Data) == 0 {
		if err := cl.fetch(); err != nil {
			return err
		}
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))

	// check for hash consistency
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf(LoaderError, "unexpected hash value")
	}

	// not generated hash
	cl.Hash = hash

	var err error
	cl.Config, cl.PRG, cl.CHR, cl.Trainer, err = Decode(cl.Data)
	return err
}

func (cl *Loader) fetch() error {
	scheme := "file"

	url, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer resp.Body.Close()

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	case "file", "":
		var filename string
		cl.Data, filename, err = archivefs.ReadFile(cl.Filename, FileExtensions[:]...)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		cl.Filename = filename

	default:
		return curated.Errorf(LoaderError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	return nil
}
