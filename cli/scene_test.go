package cli

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/maneuver/costmap"
	"go.viam.com/maneuver/referenceframe"
	"go.viam.com/maneuver/spatialmath"
)

func TestLoadScene(t *testing.T) {
	scene := testScene()
	scene.Map.Obstacles = []Obstacle{{MinX: 1, MinY: 1, MaxX: 1.2, MaxY: 1.2}}
	scene.Map.InflationRadius = 0.1

	loaded, err := LoadScene(writeScene(t, scene))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded, test.ShouldResemble, scene)
	test.That(t, loaded.StartPose().FrameName(), test.ShouldEqual, referenceframe.World)
	test.That(t, loaded.GoalPose().Pose(), test.ShouldResemble, scene.Goal)

	grid, err := loaded.BuildGrid()
	test.That(t, err, test.ShouldBeNil)
	w, h := grid.Size()
	test.That(t, w, test.ShouldEqual, 160)
	test.That(t, h, test.ShouldEqual, 160)

	mx, my, ok := grid.WorldToMap(1.1, 1.1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, grid.Cost(mx, my), test.ShouldEqual, costmap.LethalObstacle)
	mx, my, ok = grid.WorldToMap(1.25, 1.1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, grid.Cost(mx, my), test.ShouldEqual, costmap.InscribedInflatedObstacle)
	mx, my, ok = grid.WorldToMap(0, 0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, grid.Cost(mx, my), test.ShouldEqual, costmap.FreeSpace)
}

func TestScenePoses(t *testing.T) {
	scene := testScene()
	scene.Degrees = true
	scene.Start = spatialmath.NewPose2D(1, 0, 90)
	scene.Goal = spatialmath.NewPose2D(2, 1, 90)

	start := scene.StartPose()
	test.That(t, spatialmath.Pose2DAlmostEqual(start.Pose(), spatialmath.NewPose2D(1, 0, math.Pi/2), 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.Pose2DAlmostEqual(scene.GoalPose().Pose(), spatialmath.NewPose2D(2, 1, math.Pi/2), 1e-9), test.ShouldBeTrue)

	scene.RelativeGoal = true
	goal := scene.GoalPose()
	test.That(t, goal.FrameName(), test.ShouldEqual, referenceframe.World)
	test.That(t, spatialmath.Pose2DAlmostEqual(goal.Pose(), spatialmath.NewPose2D(0, 2, math.Pi), 1e-9), test.ShouldBeTrue)

	// the scene itself keeps its headings in degrees
	test.That(t, scene.Goal.Theta, test.ShouldEqual, 90.0)
}
