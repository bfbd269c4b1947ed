package model

// ProfileData is the 1:1 body-stats record created together with its user
// and removed by the same cascade. BP/SQ/DL are one-rep maxes for bench
// press, squat and deadlift.
type ProfileData struct {
	ID     uint64  // user_data.id
	UserID uint64  // user_data.user_id
	Weight float64 // user_data.weight (kg)
	Height float64 // user_data.height (cm)
	Age    int     // user_data.age
	BP     float64 // user_data.bp
	SQ     float64 // user_data.sq
	DL     float64 // user_data.dl
}

// BMI derives body mass index from the stored weight and height. Zero is
// returned while height is unset so an empty profile serializes cleanly.
func (d ProfileData) BMI() float64 {
	if d.Height <= 0 {
		return 0
	}
	m := d.Height / 100
	return d.Weight / (m * m)
}
