package importer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yrbane/nethttp.net-vcf-import/internal/utils"
)

// maxLoginAttempts bounds the suffix search so a broken existence oracle
// cannot loop forever.
const maxLoginAttempts = 10000

// ErrLoginExhausted is returned when no free login could be derived within
// the attempt bound.
var ErrLoginExhausted = errors.New("login generation exhausted")

// Login is a derived unique login handle plus display nickname.
type Login struct {
	Login    string
	Nickname string
}

// GenerateLogin derives a collision-free login from a first name. The
// lower-cased first name is the base candidate; while exists reports it
// taken, decimal suffixes 2, 3, 4, … are appended until a free candidate is
// found. The nickname is the title-cased first name.
func GenerateLogin(firstName string, exists func(string) bool) (Login, error) {
	base := strings.ToLower(strings.TrimSpace(firstName))

	login := base
	for suffix := 2; exists(login); suffix++ {
		if suffix > maxLoginAttempts {
			return Login{}, ErrLoginExhausted
		}
		login = base + strconv.Itoa(suffix)
	}

	return Login{
		Login:    login,
		Nickname: utils.TitleCase(firstName),
	}, nil
}
