package ports

// PasswordHasher hash unidireccional de credenciales con sal aleatoria por llamada.
// Dos hashes del mismo texto difieren; Verify compara en tiempo constante.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}
