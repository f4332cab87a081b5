package model

import "fmt"

// ParseHashMethod accepts the four hashing schemes the gateway supports.
func ParseHashMethod(s string) (HashMethod, error) {
	switch HashMethod(s) {
	case HashSHA1, HashHMACMD5, HashMD5, HashHMACSHA1:
		return HashMethod(s), nil
	}
	return "", fmt.Errorf("unknown hash method %q (want SHA1, HMACMD5, MD5 or HMACSHA1)", s)
}

// ParseTransactionKind accepts PREAUTH or SALE.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case KindPreAuth, KindSale:
		return TransactionKind(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q (want PREAUTH or SALE)", s)
}

// TransactionKindLabel returns the admin-facing label for a transaction kind.
func TransactionKindLabel(k TransactionKind) string {
	switch k {
	case KindPreAuth:
		return "Pre-authorization"
	case KindSale:
		return "Purchase"
	}
	return string(k)
}
