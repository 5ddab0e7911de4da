// Package encryption seals short secrets, such as the saved session file,
// with an AEAD cipher keyed from a passphrase.
//
//	c, err := encryption.New(passphrase, encryption.WithAlgorithm(encryption.ChaCha20Poly1305))
//	sealed, err := c.Encrypt(plaintext)
//	plaintext, err := c.Decrypt(sealed)
//
// Output is base64(nonce || ciphertext || tag).
package encryption
