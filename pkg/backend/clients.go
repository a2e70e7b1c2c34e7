/*
Copyright 2022-2023 EscherCloud.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package backend implements the OAuth2 back-end collaborators the
// transport-agnostic frontend flows consult: the client registrar
// (CodeRef), the token issuer (IssuerRef) and the resource guard (GuardRef).
package backend

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/pflag"
)

var (
	// ErrUnknownClient is returned when a client_id has no registered record.
	ErrUnknownClient = errors.New("unknown client")

	// ErrClientStore is raised for client table load/save failures.
	ErrClientStore = errors.New("client store error")
)

// ClientRecord is one registered OAuth2 client.
type ClientRecord struct {
	ID          string   `json:"id"`
	Secret      string   `json:"secret"`
	RedirectURL string   `json:"redirect_url"`
	Scopes      []string `json:"scopes"`
}

// ClientStoreOptions configures where the client table is persisted.
type ClientStoreOptions struct {
	// Path is the JSON file backing the client table.
	Path string
}

const clientStorePathDefault = "/var/lib/oxide-auth/clients.json"

// AddFlags registers flags with the provided flag set.
func (o *ClientStoreOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Path, "client-store-path", clientStorePathDefault, "Path to the JSON client registration table.")
}

// ClientStore is a JSON-file-backed table of registered OAuth2 clients,
// shared between the HTTP server and the oauth2gatectl registration CLI.
type ClientStore struct {
	options *ClientStoreOptions

	lock    sync.RWMutex
	records map[string]ClientRecord
}

// NewClientStore constructs a ClientStore and loads any existing table from
// disk. A missing file is not an error - the table starts empty.
func NewClientStore(options *ClientStoreOptions) (*ClientStore, error) {
	s := &ClientStore{
		options: options,
		records: map[string]ClientRecord{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *ClientStore) load() error {
	data, err := os.ReadFile(s.options.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("%w: %v", ErrClientStore, err)
	}

	var records []ClientRecord

	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %v", ErrClientStore, err)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	for _, r := range records {
		s.records[r.ID] = r
	}

	return nil
}

// save persists the table to disk. Callers must hold s.lock for reading.
func (s *ClientStore) save() error {
	records := make([]ClientRecord, 0, len(s.records))

	for _, r := range s.records {
		records = append(records, r)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClientStore, err)
	}

	if err := os.WriteFile(s.options.Path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrClientStore, err)
	}

	return nil
}

// Get returns the registered client record, or ErrUnknownClient.
func (s *ClientStore) Get(clientID string) (ClientRecord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	record, ok := s.records[clientID]
	if !ok {
		return ClientRecord{}, fmt.Errorf("%w: %s", ErrUnknownClient, clientID)
	}

	return record, nil
}

// Put registers or replaces a client record and persists the table.
func (s *ClientStore) Put(record ClientRecord) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.records[record.ID] = record

	return s.save()
}

// Delete removes a client record and persists the table.
func (s *ClientStore) Delete(clientID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.records, clientID)

	return s.save()
}

// List returns every registered client record.
func (s *ClientStore) List() []ClientRecord {
	s.lock.RLock()
	defer s.lock.RUnlock()

	records := make([]ClientRecord, 0, len(s.records))

	for _, r := range s.records {
		records = append(records, r)
	}

	return records
}

// VerifySecret performs a constant-time comparison of the client's
// registered secret against candidate.
func VerifySecret(record ClientRecord, candidate []byte) bool {
	return subtle.ConstantTimeCompare([]byte(record.Secret), candidate) == 1
}
