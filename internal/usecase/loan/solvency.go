package loan

import (
	"math/big"

	"loanvault/internal/oracle"
)

var basisPoints = big.NewInt(10_000)

// Solvent reports whether collateralAmount, valued at price, covers
// loanAmount at the configured liquidation threshold:
//
//	collateral_value / loan_value >= liquidationThresholdBps / 10000
//
// loanAmount is already denominated in the stable unit. The comparison is
// exact: both sides are cross-multiplied as integers and the price exponent
// is folded into whichever side keeps everything integral.
func Solvent(collateralAmount, loanAmount, liquidationThresholdBps uint64, p oracle.Price) bool {
	// lhs = collateral * price * 10000, rhs = loan * threshold, then scale
	// one side by 10^|expo|.
	lhs := new(big.Int).Mul(new(big.Int).SetUint64(collateralAmount), new(big.Int).SetUint64(p.Value))
	lhs.Mul(lhs, basisPoints)
	rhs := new(big.Int).Mul(new(big.Int).SetUint64(loanAmount), new(big.Int).SetUint64(liquidationThresholdBps))

	if p.Expo < 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(-int64(p.Expo)), nil)
		rhs.Mul(rhs, scale)
	} else if p.Expo > 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(p.Expo)), nil)
		lhs.Mul(lhs, scale)
	}
	return lhs.Cmp(rhs) >= 0
}
