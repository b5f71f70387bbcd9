package auth

import "golang.org/x/crypto/bcrypt"

const passwordCost = 10

// hashPassword returns a bcrypt digest. The random salt is encoded inside the
// "$"-delimited digest, so a single column holds both.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(hashed), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
