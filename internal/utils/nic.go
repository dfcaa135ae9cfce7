package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NICInfo holds the fields embedded in a national identity card number.
type NICInfo struct {
	BirthYear int
	DayOfYear int // 1..366 after the female offset is removed
	Gender    string
}

// Genders derived from the NIC birth-sequence digits.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// femaleDayOffset is added to the day-of-year digits for female holders:
// 001-366 male, 501-866 female.
const femaleDayOffset = 500

// ParseNIC parses an old (9 digits + V/X) or new (12 digits) format NIC and
// extracts the holder's birth year, day-of-year and gender.
func ParseNIC(nic string) (*NICInfo, error) {
	nic = strings.TrimSpace(nic)

	var yearPart, dayPart string
	switch {
	case len(nic) == 10 && isDigits(nic[:9]) && isOldSuffix(nic[9]):
		yearPart = nic[:2]
		dayPart = nic[2:5]
	case len(nic) == 12 && isDigits(nic):
		yearPart = nic[:4]
		dayPart = nic[4:7]
	default:
		return nil, fmt.Errorf("invalid NIC format: %q", nic)
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil, fmt.Errorf("invalid NIC year digits: %q", yearPart)
	}
	if len(yearPart) == 2 {
		year += 1900
	}

	day, err := strconv.Atoi(dayPart)
	if err != nil {
		return nil, fmt.Errorf("invalid NIC day digits: %q", dayPart)
	}

	info := &NICInfo{BirthYear: year}
	switch {
	case day >= 1 && day <= 366:
		info.Gender = GenderMale
		info.DayOfYear = day
	case day >= femaleDayOffset+1 && day <= femaleDayOffset+366:
		info.Gender = GenderFemale
		info.DayOfYear = day - femaleDayOffset
	default:
		return nil, fmt.Errorf("invalid NIC day-of-year value: %d", day)
	}
	return info, nil
}

// IsValidNIC reports whether the NIC parses.
func IsValidNIC(nic string) bool {
	_, err := ParseNIC(nic)
	return err == nil
}

// GenderFromNIC returns the gender encoded in the NIC, or an error for an
// unparseable NIC.
func GenderFromNIC(nic string) (string, error) {
	info, err := ParseNIC(nic)
	if err != nil {
		return "", err
	}
	return info.Gender, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isOldSuffix(b byte) bool {
	switch b {
	case 'V', 'v', 'X', 'x':
		return true
	}
	return false
}
