package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"edulink/internal/domain"
	"edulink/internal/port"
)

const minPasswordLength = 8

var (
	readPasswordFunc = term.ReadPassword

	errHelp = errors.New("help provided")
)

type commandLine struct {
	users port.UserRepository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createadmin -email EMAIL -name NAME   - create an ADMIN account, the password is prompted")
	fmt.Println("  resetpassword -email EMAIL            - set a new password for any account")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	createEmail := createCmd.String("email", "", "Email of the new admin.")
	createName := createCmd.String("name", "", "Full name of the new admin.")

	resetCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetEmail := resetCmd.String("email", "", "Email of the account. The password will be prompted next.")

	switch args[1] {
	case "createadmin":
		if err := createCmd.Parse(args[2:]); err != nil {
			return err
		}
		if strings.TrimSpace(*createEmail) == "" || strings.TrimSpace(*createName) == "" {
			createCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		return cli.createAdmin(*createEmail, *createName, pwd)
	case "resetpassword":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		if strings.TrimSpace(*resetEmail) == "" {
			resetCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetEmail, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return string(pwd), nil
}

func (cli *commandLine) createAdmin(email, name, password string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(name),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := cli.users.Create(ctx, user); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	fmt.Printf("admin %s created (%s)\n", user.Email, user.ID)
	return nil
}

func (cli *commandLine) resetPassword(email, password string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := cli.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("looking up %s: %w", email, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := cli.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	fmt.Printf("password updated for %s\n", user.Email)
	return nil
}
