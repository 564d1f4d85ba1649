// Package referenceframe attaches frame names and timestamps to planar poses.
package referenceframe

import (
	"fmt"
	"time"

	"go.viam.com/maneuver/spatialmath"
)

// World is the name of the default global frame.
const World = "map"

// PoseInFrame is a data structure that packages a pose with the name of the frame in which it was observed
// and the time it was observed at. Neither the frame nor the stamp take part in any pose arithmetic.
type PoseInFrame struct {
	frame string
	stamp time.Time
	pose  spatialmath.Pose2D
}

// NewPoseInFrame generates a new PoseInFrame with a zero timestamp.
func NewPoseInFrame(frame string, pose spatialmath.Pose2D) *PoseInFrame {
	return &PoseInFrame{
		frame: frame,
		pose:  pose,
	}
}

// NewStampedPoseInFrame generates a new PoseInFrame observed at stamp.
func NewStampedPoseInFrame(frame string, stamp time.Time, pose spatialmath.Pose2D) *PoseInFrame {
	return &PoseInFrame{
		frame: frame,
		stamp: stamp,
		pose:  pose,
	}
}

// FrameName returns the name of the frame in which the pose was observed.
func (pF *PoseInFrame) FrameName() string {
	return pF.frame
}

// Stamp returns the time at which the pose was observed.
func (pF *PoseInFrame) Stamp() time.Time {
	return pF.stamp
}

// Pose returns the pose that was observed.
func (pF *PoseInFrame) Pose() spatialmath.Pose2D {
	return pF.pose
}

// WithPose returns a copy of pF carrying the same frame and stamp but a different pose.
func (pF *PoseInFrame) WithPose(pose spatialmath.Pose2D) *PoseInFrame {
	return &PoseInFrame{
		frame: pF.frame,
		stamp: pF.stamp,
		pose:  pose,
	}
}

// Transform expresses pF, given relative to tf's pose, in tf's frame.
func (pF *PoseInFrame) Transform(tf *PoseInFrame) *PoseInFrame {
	return NewStampedPoseInFrame(tf.frame, pF.stamp, spatialmath.Compose(tf.pose, pF.pose))
}

// AlmostEqual reports whether both poses were observed in the same frame at approximately the same pose.
func (pF *PoseInFrame) AlmostEqual(other *PoseInFrame, epsilon float64) bool {
	return pF.frame == other.frame && spatialmath.Pose2DAlmostEqual(pF.pose, other.pose, epsilon)
}

func (pF *PoseInFrame) String() string {
	return fmt.Sprintf("%s@%s", pF.pose, pF.frame)
}
