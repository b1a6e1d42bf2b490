package loader

import "github.com/minio/highwayhash"

var fingerprintKey = []byte("funcheck-unit-exports-hash-key-1")

// Fingerprint digests a unit's source for cache keying.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
