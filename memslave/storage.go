package memslave

import "errors"

// A Storage keeps the data behind the slave.
//
// The storage is managed in units so that untouched regions allocate no
// memory, similar to pages in memory management.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage object with the specified capacity in bytes
func NewStorage(capacity uint64) *Storage {
	storage := new(Storage)

	storage.unitSize = 4096
	storage.capacity = capacity
	storage.data = make(map[uint64][]byte)

	return storage
}

// Capacity returns the capacity of the storage in bytes
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) createOrGetUnit(address uint64) ([]byte, error) {
	if address >= s.capacity {
		return nil, errors.New("accessing address beyond the storage capacity")
	}

	baseAddr := address - address%s.unitSize
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}
	return unit, nil
}

// Read returns n bytes starting at the given byte address
func (s *Storage) Read(address, n uint64) ([]byte, error) {
	if address+n > s.capacity {
		return nil, errors.New("accessing address beyond the storage capacity")
	}

	res := make([]byte, n)
	offset := uint64(0)

	for offset < n {
		currAddr := address + offset
		unit, err := s.createOrGetUnit(currAddr)
		if err != nil {
			return nil, err
		}

		inUnitAddr := currAddr % s.unitSize
		copied := copy(res[offset:], unit[inUnitAddr:])
		offset += uint64(copied)
	}

	return res, nil
}

// Write stores the data at the given byte address
func (s *Storage) Write(address uint64, data []byte) error {
	if address+uint64(len(data)) > s.capacity {
		return errors.New("accessing address beyond the storage capacity")
	}

	offset := uint64(0)

	for offset < uint64(len(data)) {
		currAddr := address + offset
		unit, err := s.createOrGetUnit(currAddr)
		if err != nil {
			return err
		}

		inUnitAddr := currAddr % s.unitSize
		copied := copy(unit[inUnitAddr:], data[offset:])
		offset += uint64(copied)
	}

	return nil
}
