//go:build windows

package client

// lockFile на Windows не блокирует: атомарной замены через rename достаточно
// для одного экземпляра панели.
func lockFile(string, bool) (func(), error) {
	return func() {}, nil
}
