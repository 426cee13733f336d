package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/clipboard"
	"github.com/kpvault/pm/otp"
	"github.com/kpvault/pm/records"
)

func cmdOTP() *cli.Command {
	return &cli.Command{
		Name:  "otp",
		Usage: "manage TOTP codes attached to an entry",
		Commands: []*cli.Command{
			cmdOTPAdd(),
			cmdOTPShow(),
			cmdOTPClip(),
		},
	}
}

func cmdOTPAdd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "attach a TOTP secret to an entry",
		ArgsUsage: "<path> <otpauth-uri-or-secret>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args().Slice()
			if len(args) < 2 {
				return fmt.Errorf("usage: pm otp add <path> <otpauth-uri-or-secret>")
			}
			path, raw := args[0], args[1]

			cfg, err := otp.ParseOTPInput(raw)
			if err != nil {
				return err
			}

			mk, err := unlock()
			if err != nil {
				return err
			}
			entry, err := records.LoadEntry(path, mk)
			if err != nil {
				return err
			}
			entry.OTP = &cfg
			if err := records.SaveEntry(path, entry, mk); err != nil {
				return err
			}
			fmt.Printf("otp attached to %s\n", path)
			return nil
		},
	}
}

func cmdOTPShow() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the current TOTP code for an entry",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			code, err := currentOTPCode(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Println(code)
			return nil
		},
	}
}

func cmdOTPClip() *cli.Command {
	return &cli.Command{
		Name:      "clip",
		Usage:     "copy the current TOTP code for an entry to the clipboard",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			a := mustApp(ctx)
			code, err := currentOTPCode(c.Args().First())
			if err != nil {
				return err
			}
			if err := clipboard.Copy(code); err != nil {
				return err
			}
			a.Log.Info("copied otp code to clipboard", "path", c.Args().First())
			fmt.Println("copied to clipboard")
			return nil
		},
	}
}

func currentOTPCode(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("usage: pm otp show|clip <path>")
	}
	mk, err := unlock()
	if err != nil {
		return "", err
	}
	entry, err := records.LoadEntry(path, mk)
	if err != nil {
		return "", err
	}
	if entry.OTP == nil {
		return "", fmt.Errorf("%s has no otp configured", path)
	}
	return otp.GenerateCurrentCode(*entry.OTP)
}
