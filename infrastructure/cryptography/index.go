package cryptography

var CryptoHahser Hasher = argonHasher{}
