package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Synthetic name parts for seed data. Real rosters are imported from CSV;
// these exist only so dev databases have plausible-looking entries.
var givenNames = []string{
	"Rakesh", "Sunil", "Anil", "Ashok", "Ramesh", "Sandeep", "Pradeep",
	"Naveen", "Rajesh", "Vinod", "Suresh", "Manoj", "Deepak", "Pawan",
	"Kamlesh", "Santosh", "Sunita", "Neelam", "Pushpa", "Kiran",
}
var familyNames = []string{
	"Arora", "Sharma", "Verma", "Gupta", "Malik", "Khanna", "Chawla",
	"Saini", "Gandhi", "Bhatia", "Sethi", "Ahuja", "Kapoor", "Batra",
}

func GenerateRandomName() string {
	return givenNames[rand.Intn(len(givenNames))] + " " + familyNames[rand.Intn(len(familyNames))]
}

var digits = "0123456789"

// GenerateUsernameFromName lowercases the name, strips spaces and appends a
// few digits, e.g. "Rakesh Arora" -> "rakesharora42".
func GenerateUsernameFromName(name string) string {
	username := strings.ToLower(strings.ReplaceAll(name, " ", ""))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomGroup() domain.Group {
	groups := append([]domain.Group{}, domain.GentsGroups...)
	groups = append(groups, domain.GroupLadies)
	return groups[rand.Intn(len(groups))]
}

func GenerateRandomSewadar(group domain.Group) *domain.Sewadar {
	gender := domain.GenderGents
	if group == domain.GroupLadies {
		gender = domain.GenderLadies
	}

	return &domain.Sewadar{
		Name:      GenerateRandomName(),
		Gender:    gender,
		HomeGroup: group,
	}
}

func GenerateRandomIncharge(password string, group domain.Group) (*domain.Incharge, error) {
	fullName := GenerateRandomName()
	username := GenerateUsernameFromName(fullName)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleGentsIncharge
	if group == domain.GroupLadies {
		role = domain.RoleLadiesIncharge
	}

	return &domain.Incharge{
		Username:      username,
		PasswordHash:  string(passwordHash),
		FullName:      fullName,
		Email:         username + "@example.org",
		Role:          role,
		AssignedGroup: group,
	}, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}
