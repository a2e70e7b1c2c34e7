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

// Package jose wraps go-jose to sign-and-encrypt (JWS nested in JWE) the
// opaque strings this module hands out as authorization codes and bearer
// access tokens.
package jose

import (
	"crypto"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/pflag"
	jose "gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"
)

var (
	// ErrKeyFormat is raised when something is wrong with the
	// encryption keys.
	ErrKeyFormat = errors.New("key format error")

	// ErrTokenVerification is raised when token verification fails.
	ErrTokenVerification = errors.New("failed to verify token")
)

// Options configures where the signing/encryption key pair is sourced
// from. It is expected to be a kubernetes.io/tls secret mounted by
// cert-manager, so the keys rotate on its schedule.
type Options struct {
	// TLSKeyPath identifies where to get the JWE/JWS private key from.
	TLSKeyPath string

	// TLSCertPath identifies where to get the JWE/JWS public key from.
	TLSCertPath string
}

const (
	tlsKeyPathDefault  = "/var/lib/secrets/oxide-auth/jose/tls.key"
	tlsCertPathDefault = "/var/lib/secrets/oxide-auth/jose/tls.crt"
)

// AddFlags registers flags with the provided flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.TLSKeyPath, "jose-tls-key", tlsKeyPathDefault, "TLS key used to sign JWS and decrypt JWE.")
	f.StringVar(&o.TLSCertPath, "jose-tls-cert", tlsCertPathDefault, "TLS cert used to verify JWS and encrypt JWE.")
}

// loadedKeyPair is the parsed form of the configured certificate, plus the
// mtimes it was parsed from. A single gateway process issues and redeems
// codes/tokens at a much higher rate than cert-manager rotates the backing
// secret, so re-running tls.LoadX509KeyPair and x509.ParseCertificate on
// every Encode/Decode call is wasted work; this cache avoids that while
// still noticing a rotation via a stat, not by assuming the key never
// changes.
type loadedKeyPair struct {
	publicKey  any
	privateKey crypto.PrivateKey
	kid        string

	certModTime int64
	keyModTime  int64
}

// KeyPair is in charge of signed-and-encrypted token issue and verification
// for both authorization codes and access tokens.
type KeyPair struct {
	options *Options

	mu     sync.Mutex
	loaded *loadedKeyPair
}

// NewKeyPair returns a new key pair backed issuer/validator.
func NewKeyPair(options *Options) *KeyPair {
	return &KeyPair{options: options}
}

// getKeyPair returns the public key, private key and key id from the
// configured certificate, reloading it only when the files on disk have
// changed since the last load. The key id is inspired by X.509 subject key
// identifiers: a hash over the subject public key info.
func (k *KeyPair) getKeyPair() (any, crypto.PrivateKey, string, error) {
	certModTime, err := fileModTime(k.options.TLSCertPath)
	if err != nil {
		return nil, nil, "", err
	}

	keyModTime, err := fileModTime(k.options.TLSKeyPath)
	if err != nil {
		return nil, nil, "", err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.loaded != nil && k.loaded.certModTime == certModTime && k.loaded.keyModTime == keyModTime {
		return k.loaded.publicKey, k.loaded.privateKey, k.loaded.kid, nil
	}

	loaded, err := k.loadKeyPair(certModTime, keyModTime)
	if err != nil {
		return nil, nil, "", err
	}

	k.loaded = loaded

	return loaded.publicKey, loaded.privateKey, loaded.kid, nil
}

func fileModTime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return info.ModTime().UnixNano(), nil
}

func (k *KeyPair) loadKeyPair(certModTime, keyModTime int64) (*loadedKeyPair, error) {
	tlsCertificate, err := tls.LoadX509KeyPair(k.options.TLSCertPath, k.options.TLSKeyPath)
	if err != nil {
		return nil, err
	}

	if len(tlsCertificate.Certificate) != 1 {
		return nil, fmt.Errorf("%w: unexpected certificate chain", ErrKeyFormat)
	}

	certificate, err := x509.ParseCertificate(tlsCertificate.Certificate[0])
	if err != nil {
		return nil, err
	}

	if certificate.PublicKeyAlgorithm != x509.ECDSA {
		return nil, fmt.Errorf("%w: certificate public key algorithm is not ECDSA", ErrKeyFormat)
	}

	kid := sha256.Sum256(certificate.RawSubjectPublicKeyInfo)

	return &loadedKeyPair{
		publicKey:   certificate.PublicKey,
		privateKey:  tlsCertificate.PrivateKey,
		kid:         base64.RawURLEncoding.EncodeToString(kid[:]),
		certModTime: certModTime,
		keyModTime:  keyModTime,
	}, nil
}

// Encode signs then encrypts claims into a compact JWE string.
func (k *KeyPair) Encode(claims interface{}) (string, error) {
	publicKey, privateKey, kid, err := k.getKeyPair()
	if err != nil {
		return "", fmt.Errorf("failed to get key pair: %w", err)
	}

	signingKey := jose.SigningKey{
		Algorithm: jose.ES512,
		Key:       privateKey,
	}

	signer, err := jose.NewSigner(signingKey, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create signer: %w", err)
	}

	recipient := jose.Recipient{
		Algorithm: jose.ECDH_ES,
		Key:       publicKey,
		KeyID:     kid,
	}

	encrypterOptions := &jose.EncrypterOptions{}
	encrypterOptions = encrypterOptions.WithType("JWT").WithContentType("JWT")

	encrypter, err := jose.NewEncrypter(jose.A256GCM, recipient, encrypterOptions)
	if err != nil {
		return "", fmt.Errorf("failed to create encrypter: %w", err)
	}

	token, err := jwt.SignedAndEncrypted(signer, encrypter).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return token, nil
}

// Decode decrypts then verifies a compact JWE string into claims.
func (k *KeyPair) Decode(tokenString string, claims interface{}) error {
	publicKey, privateKey, _, err := k.getKeyPair()
	if err != nil {
		return fmt.Errorf("failed to get key pair: %w", err)
	}

	nestedToken, err := jwt.ParseSignedAndEncrypted(tokenString)
	if err != nil {
		return fmt.Errorf("%w: failed to parse encrypted token: %v", ErrTokenVerification, err)
	}

	token, err := nestedToken.Decrypt(privateKey)
	if err != nil {
		return fmt.Errorf("%w: failed to decrypt token: %v", ErrTokenVerification, err)
	}

	if err := token.Claims(publicKey, claims); err != nil {
		return fmt.Errorf("%w: failed to verify claims: %v", ErrTokenVerification, err)
	}

	return nil
}

// JWKS returns the public half of the key pair as a JSON Web Key Set, for
// clients that want to verify tokens out of band.
func (k *KeyPair) JWKS() (*jose.JSONWebKeySet, error) {
	pub, _, kid, err := k.getKeyPair()
	if err != nil {
		return nil, err
	}

	jwks := &jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{
				Key:   pub,
				KeyID: kid,
				Use:   "sig",
			},
		},
	}

	return jwks, nil
}
