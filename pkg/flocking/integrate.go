package flocking

// IntegrateVelocity applies the agent acceleration over dt seconds and keeps
// the resulting speed within [MinSpeed, MaxSpeed]. A zero velocity stays zero.
func IntegrateVelocity(a *Agent, s Settings, dt float64) {
	v := a.Velocity.Add(a.Acceleration.Mul(dt))
	a.Velocity = v.ClampLenRange(s.MinSpeed, s.MaxSpeed)
}

// IntegratePosition moves the agent along its velocity for dt seconds.
func IntegratePosition(a *Agent, dt float64) {
	a.Position = a.Position.Add(a.Velocity.Mul(dt))
}
