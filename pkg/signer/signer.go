// Package signer signs rendered connection files with an X.509 certificate so
// the Remote Desktop client can show the publisher and detect tampering.
package signer

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/arthur-debert/rdpgen/pkg/rdpfile"
	"go.mozilla.org/pkcs7"
)

// RDP signs connection files. It satisfies the engine's Signer interface.
type RDP struct {
	resolver *Resolver
}

// New creates a signer loading certificates and keys through resolver.
func New(resolver *Resolver) *RDP {
	return &RDP{resolver: resolver}
}

// Sign parses doc as a connection file, signs its secure settings and
// returns the re-serialized file.
func (s *RDP) Sign(doc []byte, certRef, keyRef string) ([]byte, error) {
	logger := logging.GetLogger("signer")

	cert, err := s.loadCertificate(certRef)
	if err != nil {
		return nil, err
	}
	key, err := s.loadKey(keyRef)
	if err != nil {
		return nil, err
	}

	f, err := rdpfile.Parse(string(doc))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSigning, "document is not a valid connection file")
	}

	err = f.Sign(func(blob []byte) ([]byte, error) {
		return Detached(blob, cert, key)
	})
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrSigning) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrSigning, "failed to sign connection file")
	}

	logger.Info().
		Str("subject", cert.Subject.String()).
		Str("address", f.FullAddress()).
		Msg("signed connection file")
	return []byte(f.String()), nil
}

// Detached returns a DER PKCS#7 SignedData over blob with SHA-256, no signed
// attributes and the content left out.
func Detached(blob []byte, cert *x509.Certificate, key crypto.PrivateKey) ([]byte, error) {
	sd, err := pkcs7.NewSignedData(blob)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSigning, "failed to prepare signed data")
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)
	if err := sd.SignWithoutAttr(cert, key, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, errors.Wrap(err, errors.ErrSigning, "failed to sign")
	}
	sd.Detach()
	der, err := sd.Finish()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSigning, "failed to encode signature")
	}
	return der, nil
}

func (s *RDP) loadCertificate(ref string) (*x509.Certificate, error) {
	data, err := s.resolver.Read(ref)
	if err != nil {
		return nil, err
	}
	cert, err := ParseCertificate(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSigning, "invalid certificate %s", ref).WithDetail("ref", ref)
	}
	return cert, nil
}

func (s *RDP) loadKey(ref string) (crypto.PrivateKey, error) {
	data, err := s.resolver.Read(ref)
	if err != nil {
		return nil, err
	}
	key, err := ParsePrivateKey(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSigning, "invalid private key %s", ref).WithDetail("ref", ref)
	}
	return key, nil
}

// ParseCertificate returns the first certificate in PEM data.
func ParseCertificate(data []byte) (*x509.Certificate, error) {
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return nil, errors.New(errors.ErrInvalidInput, "no PEM certificate found")
		}
		if block.Type == "CERTIFICATE" {
			return x509.ParseCertificate(block.Bytes)
		}
	}
}

// ParsePrivateKey returns the first private key in PEM data. PKCS#8, PKCS#1
// and SEC 1 EC keys are accepted; encrypted keys are not.
func ParsePrivateKey(data []byte) (crypto.PrivateKey, error) {
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return nil, errors.New(errors.ErrInvalidInput, "no PEM private key found")
		}
		if _, encrypted := block.Headers["Proc-Type"]; encrypted || block.Type == "ENCRYPTED PRIVATE KEY" {
			return nil, errors.New(errors.ErrInvalidInput, "encrypted private keys are not supported")
		}
		switch block.Type {
		case "PRIVATE KEY":
			return x509.ParsePKCS8PrivateKey(block.Bytes)
		case "RSA PRIVATE KEY":
			return x509.ParsePKCS1PrivateKey(block.Bytes)
		case "EC PRIVATE KEY":
			return x509.ParseECPrivateKey(block.Bytes)
		}
	}
}
